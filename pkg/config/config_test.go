/*
 * Copyright 2025 FleetWatch Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	ListenAddr string `json:"listen_addr"`
	Secret     string `json:"secret"`
}

var errSecretRequired = errors.New("secret is required")

func (c *sampleConfig) Validate() error {
	if c.Secret == "" {
		return errSecretRequired
	}

	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":8090", "secret": "s"}`)

	var cfg sampleConfig
	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, ":8090", cfg.ListenAddr)
}

func TestLoadAndValidateFailsValidation(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": ":8090"}`)

	var cfg sampleConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)

	assert.ErrorIs(t, err, ErrLoadConfigFailed)
	assert.ErrorIs(t, err, errSecretRequired)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	var cfg sampleConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), "/no/such/file.json", &cfg)

	assert.ErrorIs(t, err, ErrLoadConfigFailed)
}

func TestLoadAndValidateBadJSON(t *testing.T) {
	path := writeConfig(t, `{"listen_addr": `)

	var cfg sampleConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)

	assert.ErrorIs(t, err, ErrLoadConfigFailed)
}

func TestLoadAndValidateNilDst(t *testing.T) {
	err := NewConfig(nil).LoadAndValidate(context.Background(), "anything.json", nil)
	assert.ErrorIs(t, err, ErrInvalidConfigPtr)
}

func TestEnvOverride(t *testing.T) {
	value := "from-file"

	t.Setenv("FLEETWATCH_TEST_VALUE", "from-env")
	EnvOverride(&value, "FLEETWATCH_TEST_VALUE")
	assert.Equal(t, "from-env", value)

	t.Setenv("FLEETWATCH_TEST_VALUE", "")
	EnvOverride(&value, "FLEETWATCH_TEST_VALUE")
	assert.Equal(t, "from-env", value, "empty environment values are ignored")
}
