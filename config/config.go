// Package config owns the settings registry and the viper instance behind it.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/yogaland/yogaland/constant"
	"github.com/yogaland/yogaland/filesystem"
	"github.com/yogaland/yogaland/where"
)

// EnvKeyReplacer maps config keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// ErrUnknownKey is returned for keys missing from the registry.
var ErrUnknownKey = errors.New("unknown key")

// Setup registers defaults and env bindings, then reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return err
}

// Path is where the config file lives, whether or not it exists yet.
func Path() string {
	return filepath.Join(where.Config(), constant.App+".toml")
}

// Save writes the current settings, creating the file when missing.
func Save() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfigAs(Path())
	}
	return err
}

// Lookup returns the registered field for key. Unknown keys get the
// closest registered key as a hint.
func Lookup(key string) (Field, error) {
	if field, ok := Default[key]; ok {
		return field, nil
	}
	return Field{}, fmt.Errorf("%w %s, did you mean %s?", ErrUnknownKey, key, Closest(key))
}

// Closest is the registered key with the smallest edit distance to key.
func Closest(key string) string {
	return lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		da, db := levenshtein.Distance(key, a), levenshtein.Distance(key, b)
		if da == db {
			return a < b
		}
		return da < db
	})
}

// Parse converts command-line words to the type of the field's default.
func (f *Field) Parse(words []string) (any, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("no value for %s", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return words[0], nil
	case int:
		n, err := strconv.Atoi(words[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value %q for %s", words[0], f.Key)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(words[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value %q for %s", words[0], f.Key)
		}
		return b, nil
	case []string:
		// "a,b" and "a b" are both accepted
		return lo.FlatMap(words, func(w string, _ int) []string {
			return lo.Compact(lo.Map(strings.Split(w, ","), func(s string, _ int) string {
				return strings.TrimSpace(s)
			}))
		}), nil
	default:
		return nil, fmt.Errorf("unsupported type %s for %s", f.typeName(), f.Key)
	}
}

// Section is the group a key belongs to, "ads" for "ads.slots".
func (f *Field) Section() string {
	section, _, _ := strings.Cut(f.Key, ".")
	return section
}

// Sections groups fields by section, sorted by key inside each.
func Sections(fields []Field) map[string][]Field {
	grouped := lo.GroupBy(fields, func(f Field) string { return f.Section() })
	for _, group := range grouped {
		sortFields(group)
	}
	return grouped
}
