package queue

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ViperKey is the subtree key under which queue settings are typically placed,
// e.g. v.Sub(queue.ViperKey).
const ViperKey = "queue"

// FromViper produces a Settings from a viper environment.  The discard and
// control keys accept the policies' text forms (e.g. "discard_oldest",
// "full_control"), and the size key accepts either an integer or the string
// "unbounded".  A nil viper yields the default Settings.
func FromViper(v *viper.Viper) (Settings, error) {
	var s Settings
	if v == nil {
		return s, nil
	}

	err := v.Unmarshal(&s, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(),
			sizeHookFunc(),
		),
	))

	if err != nil {
		return Settings{}, fmt.Errorf("unable to decode queue settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// sizeHookFunc maps the string "unbounded" onto a nonpositive Size.  Other
// strings destined for integer fields go through cast.
func sizeHookFunc() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Int {
			return data, nil
		}

		if strings.EqualFold(data.(string), "unbounded") {
			return 0, nil
		}

		return cast.ToIntE(data)
	}
}
