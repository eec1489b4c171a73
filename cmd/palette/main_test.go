package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/codepalette/palette/internal/config"
	"github.com/codepalette/palette/internal/logging"
)

func setup(t *testing.T, stdin string, args ...string) *bytes.Buffer {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		envFile = ""
	})
	return &out
}

func executeInto(t *testing.T, v any, stdin string, args ...string) error {
	t.Helper()

	out := setup(t, stdin, args...)
	ctx := logging.NewWith(zap.NewNop()).GetContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)

	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), v))
	}
	return err
}

func execute(t *testing.T, stdin string, args ...string) (map[string]any, error) {
	t.Helper()

	var envelope map[string]any
	err := executeInto(t, &envelope, stdin, args...)
	return envelope, err
}

func clearEnv(t *testing.T) {
	for _, name := range []string{
		config.ClerkPublishableKeyVar,
		config.ClerkSignInFallbackRedirectURLVar,
		config.ClerkSignUpFallbackRedirectURLVar,
		config.ClerkSecretKeyVar,
		config.DatabaseURLVar,
		config.PostHogKeyVar,
		config.PostHogHostVar,
		config.GAMeasurementIDVar,
	} {
		t.Setenv(name, "")
	}
}

type syncCounter struct {
	zapcore.Core
	syncs int
}

func (c *syncCounter) Sync() error {
	c.syncs++
	return c.Core.Sync()
}

func TestEnvCommand(t *testing.T) {
	t.Setenv(config.ClerkPublishableKeyVar, "pk_test")
	t.Setenv(config.ClerkSignInFallbackRedirectURLVar, "/in")
	t.Setenv(config.ClerkSignUpFallbackRedirectURLVar, "/up")
	t.Setenv(config.ClerkSecretKeyVar, "sk_secret")
	t.Setenv(config.DatabaseURLVar, "postgres://db")

	envelope, err := execute(t, "", "env")
	require.NoError(t, err)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "environment is valid", envelope["message"])

	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pk_test", data[config.ClerkPublishableKeyVar])
	assert.NotContains(t, data, config.ClerkSecretKeyVar)
}

func TestEnvCommandFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("clerk_publishable_key: pk_file\n"), 0o600))
	clearEnv(t)

	envelope, err := execute(t, "", "env", "--file", path)
	require.ErrorIs(t, err, errFailed)
	assert.Equal(t, false, envelope["success"])
	assert.Nil(t, envelope["data"])
	assert.Contains(t, envelope["error"], config.DatabaseURLVar+" is required")
	assert.NotContains(t, envelope["error"], config.ClerkPublishableKeyVar+" is required")
}

func TestInspectCommand(t *testing.T) {
	t.Run("plain payload", func(t *testing.T) {
		envelope, err := execute(t, `{"plan":"pro"}`, "inspect")
		require.NoError(t, err)
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, "Success", envelope["message"])
		assert.Equal(t, map[string]any{"plan": "pro"}, envelope["data"])
	})

	t.Run("failure envelope from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "payload.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"success":false,"message":"Error","error":"boom"}`), 0o600))

		envelope, err := execute(t, "", "inspect", path)
		require.ErrorIs(t, err, errFailed)
		assert.Equal(t, false, envelope["success"])
		assert.Equal(t, "boom", envelope["error"])
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := execute(t, `{`, "inspect")
		require.Error(t, err)
		require.NotErrorIs(t, err, errFailed)
	})

	t.Run("several files", func(t *testing.T) {
		dir := t.TempDir()
		good := filepath.Join(dir, "good.json")
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(good, []byte(`{"plan":"pro"}`), 0o600))
		require.NoError(t, os.WriteFile(bad, []byte(`{"success":false,"message":"denied"}`), 0o600))

		var envelopes []map[string]any
		err := executeInto(t, &envelopes, "", "inspect", good, bad, filepath.Join(dir, "missing.json"))
		require.ErrorIs(t, err, errFailed)
		require.Len(t, envelopes, 3)

		assert.Equal(t, true, envelopes[0]["success"])
		assert.Equal(t, map[string]any{"plan": "pro"}, envelopes[0]["data"])

		assert.Equal(t, false, envelopes[1]["success"])
		assert.Equal(t, "denied", envelopes[1]["message"])
		assert.Equal(t, "denied", envelopes[1]["error"])

		assert.Equal(t, false, envelopes[2]["success"])
		assert.Equal(t, "Error", envelopes[2]["message"])
		assert.Contains(t, envelopes[2]["error"], "missing.json")
	})

	t.Run("several successful files", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a.json")
		b := filepath.Join(dir, "b.json")
		require.NoError(t, os.WriteFile(a, []byte(`1`), 0o600))
		require.NoError(t, os.WriteFile(b, []byte(`{"success":true,"data":2}`), 0o600))

		var envelopes []map[string]any
		require.NoError(t, executeInto(t, &envelopes, "", "inspect", a, b))
		require.Len(t, envelopes, 2)
		assert.Equal(t, float64(1), envelopes[0]["data"])
		assert.Equal(t, float64(2), envelopes[1]["data"])
	})
}

func TestRunSyncsLogger(t *testing.T) {
	t.Run("failed command", func(t *testing.T) {
		clearEnv(t)
		setup(t, "", "env")

		core := &syncCounter{Core: zapcore.NewNopCore()}
		var stderr bytes.Buffer
		code := run(context.Background(), logging.NewWith(zap.New(core)), &stderr)

		assert.Equal(t, 1, code)
		assert.Equal(t, 1, core.syncs)
		assert.Empty(t, stderr.String())
	})

	t.Run("command error", func(t *testing.T) {
		setup(t, `{`, "inspect")

		core := &syncCounter{Core: zapcore.NewNopCore()}
		var stderr bytes.Buffer
		code := run(context.Background(), logging.NewWith(zap.New(core)), &stderr)

		assert.Equal(t, 1, code)
		assert.Equal(t, 1, core.syncs)
		assert.True(t, strings.HasPrefix(stderr.String(), "Error:"))
	})

	t.Run("success", func(t *testing.T) {
		setup(t, `{"plan":"pro"}`, "inspect")

		core := &syncCounter{Core: zapcore.NewNopCore()}
		code := run(context.Background(), logging.NewWith(zap.New(core)), &bytes.Buffer{})

		assert.Equal(t, 0, code)
		assert.Equal(t, 1, core.syncs)
	})
}
