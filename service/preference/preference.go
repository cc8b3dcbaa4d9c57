package preference

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"vcop/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/spf13/cast"
)

const (
	keyPrefix = "preference."

	// DefaultTheme theme before anything is saved
	DefaultTheme = "light"

	maxThemeLength = 32
)

// Properties string key/value persistence
type Properties interface {
	Get(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, value string) error
}

type propertyStore struct {
	store property.Store
}

// FromPropertyStore properties backed by the property table
func FromPropertyStore(store property.Store) Properties {
	return &propertyStore{store: store}
}

func (p *propertyStore) Get(ctx context.Context, key string) (string, error) {
	v, err := p.store.Get(ctx, key)
	if err != nil {
		return "", err
	}

	return v.String(), nil
}

func (p *propertyStore) Save(ctx context.Context, key, value string) error {
	return p.store.Save(ctx, key, value)
}

type preferenceService struct {
	properties Properties

	mux   sync.RWMutex
	prefs core.Preferences
}

// New new preference service, call Init before serving
func New(properties Properties) core.IPreferenceService {
	return &preferenceService{
		properties: properties,
		prefs:      core.Preferences{Theme: DefaultTheme},
	}
}

func (s *preferenceService) Init(ctx context.Context) error {
	darkMode, err := s.properties.Get(ctx, keyPrefix+core.PreferenceDarkMode)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("property.Get", core.PreferenceDarkMode)
		return err
	}

	theme, err := s.properties.Get(ctx, keyPrefix+core.PreferenceTheme)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("property.Get", core.PreferenceTheme)
		return err
	}

	prefs := core.Preferences{
		DarkMode: cast.ToBool(darkMode),
		Theme:    theme,
	}

	if prefs.Theme == "" {
		prefs.Theme = DefaultTheme
	}

	s.mux.Lock()
	s.prefs = prefs
	s.mux.Unlock()

	return nil
}

func (s *preferenceService) Get() core.Preferences {
	s.mux.RLock()
	defer s.mux.RUnlock()

	return s.prefs
}

// Update persist first, the in-memory copy only changes once the save succeeded
func (s *preferenceService) Update(ctx context.Context, key, value string) (core.Preferences, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	prefs := s.prefs
	var stored string

	switch key {
	case core.PreferenceDarkMode:
		v, err := cast.ToBoolE(strings.TrimSpace(value))
		if err != nil {
			return prefs, fmt.Errorf("%w: dark_mode %q", core.ErrInvalidParams, value)
		}

		prefs.DarkMode, stored = v, cast.ToString(v)
	case core.PreferenceTheme:
		v := strings.TrimSpace(value)
		if v == "" || len(v) > maxThemeLength {
			return prefs, fmt.Errorf("%w: theme %q", core.ErrInvalidParams, value)
		}

		prefs.Theme, stored = v, v
	default:
		return prefs, fmt.Errorf("%w: unknown preference %q", core.ErrInvalidParams, key)
	}

	if err := s.properties.Save(ctx, keyPrefix+key, stored); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("property.Save", key)
		return s.prefs, err
	}

	s.prefs = prefs
	return prefs, nil
}
