// Package config loads and validates the environment the Code Palette
// application needs: identity provider keys, analytics ids and the database.
package config

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/zeebo/errs"
	"gopkg.in/yaml.v3"

	"github.com/codepalette/palette/internal/logging"
	"github.com/codepalette/palette/pkg/rop"
	"github.com/codepalette/palette/pkg/rop/solo"
	"github.com/codepalette/palette/pkg/rop/tiny"
)

// ValidationError is the class of every environment problem.
var ValidationError = errs.Class("invalid environment")

// Environment variable names.
const (
	ClerkPublishableKeyVar            = "NEXT_PUBLIC_CLERK_PUBLISHABLE_KEY"
	ClerkSignInFallbackRedirectURLVar = "NEXT_PUBLIC_CLERK_SIGN_IN_FALLBACK_REDIRECT_URL"
	ClerkSignUpFallbackRedirectURLVar = "NEXT_PUBLIC_CLERK_SIGN_UP_FALLBACK_REDIRECT_URL"
	PostHogKeyVar                     = "NEXT_PUBLIC_POSTHOG_KEY"
	PostHogHostVar                    = "NEXT_PUBLIC_POSTHOG_HOST"
	GAMeasurementIDVar                = "NEXT_PUBLIC_GA_MEASUREMENT_ID"
	ClerkSecretKeyVar                 = "CLERK_SECRET_KEY"
	DatabaseURLVar                    = "DATABASE_URL"
)

const (
	postHogKeyPrefix      = "phc_"
	gaMeasurementIDPrefix = "G-"
)

// Env holds the application environment. Client values are safe to expose
// to the browser, server values are not.
type Env struct {
	// Client
	ClerkPublishableKey            string `yaml:"clerk_publishable_key"`
	ClerkSignInFallbackRedirectURL string `yaml:"clerk_sign_in_fallback_redirect_url"`
	ClerkSignUpFallbackRedirectURL string `yaml:"clerk_sign_up_fallback_redirect_url"`
	PostHogKey                     string `yaml:"posthog_key"`
	PostHogHost                    string `yaml:"posthog_host"`
	GAMeasurementID                string `yaml:"ga_measurement_id"`

	// Server
	ClerkSecretKey string `yaml:"clerk_secret_key"`
	DatabaseURL    string `yaml:"database_url"`
}

// Load reads the optional YAML file at path, applies environment overrides
// and validates the outcome. Any problem comes back as a failure.
func Load(ctx context.Context, path string) rop.Result[*Env] {
	loaded := rop.TryCatch[*Env](ctx, rop.Func[*Env](func(ctx context.Context) (*Env, error) {
		return read(path)
	}))

	return tiny.Start(ctx, loaded).
		Map(func(ctx context.Context, env *Env) *Env {
			env.applyEnvOverrides()
			return env
		}).
		ThenTry(func(ctx context.Context, env *Env) (*Env, error) {
			if err := env.Validate(ctx); err != nil {
				return nil, err
			}
			return env, nil
		}).
		Ensure(func(ctx context.Context, env *Env) {
			logging.FromContext(ctx).Debug("environment loaded",
				logging.Bool("posthog", env.PostHogKey != ""),
				logging.Bool("google_analytics", env.GAMeasurementID != ""))
		}, nil).
		Result()
}

func read(path string) (*Env, error) {
	env := &Env{}
	if path == "" {
		return env, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	if err := yaml.Unmarshal(data, env); err != nil {
		return nil, errs.New("could not parse %s: %v", path, err)
	}
	return env, nil
}

func (e *Env) applyEnvOverrides() {
	overrides := map[string]*string{
		ClerkPublishableKeyVar:            &e.ClerkPublishableKey,
		ClerkSignInFallbackRedirectURLVar: &e.ClerkSignInFallbackRedirectURL,
		ClerkSignUpFallbackRedirectURLVar: &e.ClerkSignUpFallbackRedirectURL,
		PostHogKeyVar:                     &e.PostHogKey,
		PostHogHostVar:                    &e.PostHogHost,
		GAMeasurementIDVar:                &e.GAMeasurementID,
		ClerkSecretKeyVar:                 &e.ClerkSecretKey,
		DatabaseURLVar:                    &e.DatabaseURL,
	}
	for name, field := range overrides {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
}

// Validate checks every variable and reports all problems together.
func (e *Env) Validate(ctx context.Context) error {
	res := solo.ValidateAll(ctx, solo.Succeed(e), false,
		required(ClerkPublishableKeyVar, func(e *Env) string { return e.ClerkPublishableKey }),
		required(ClerkSignInFallbackRedirectURLVar, func(e *Env) string { return e.ClerkSignInFallbackRedirectURL }),
		required(ClerkSignUpFallbackRedirectURLVar, func(e *Env) string { return e.ClerkSignUpFallbackRedirectURL }),
		optional(PostHogKeyVar, func(e *Env) string { return e.PostHogKey }, hasPrefix(postHogKeyPrefix)),
		optional(PostHogHostVar, func(e *Env) string { return e.PostHogHost }, isURL),
		optional(GAMeasurementIDVar, func(e *Env) string { return e.GAMeasurementID }, hasPrefix(gaMeasurementIDPrefix)),
		required(ClerkSecretKeyVar, func(e *Env) string { return e.ClerkSecretKey }),
		required(DatabaseURLVar, func(e *Env) string { return e.DatabaseURL }),
	)
	if res.IsSuccess() {
		return nil
	}
	return ValidationError.Wrap(errs.Combine(rop.GetErrors(res.Err())...))
}

// Client returns the values that may be shipped to the browser, keyed by
// variable name. Unset optional values are left out.
func (e *Env) Client() map[string]string {
	client := map[string]string{
		ClerkPublishableKeyVar:            e.ClerkPublishableKey,
		ClerkSignInFallbackRedirectURLVar: e.ClerkSignInFallbackRedirectURL,
		ClerkSignUpFallbackRedirectURLVar: e.ClerkSignUpFallbackRedirectURL,
	}
	if e.PostHogKey != "" {
		client[PostHogKeyVar] = e.PostHogKey
	}
	if e.PostHogHost != "" {
		client[PostHogHostVar] = e.PostHogHost
	}
	if e.GAMeasurementID != "" {
		client[GAMeasurementIDVar] = e.GAMeasurementID
	}
	return client
}

type check = func(ctx context.Context, in rop.Result[*Env]) rop.Result[*Env]

func required(name string, get func(*Env) string) check {
	return func(ctx context.Context, in rop.Result[*Env]) rop.Result[*Env] {
		return solo.AndValidate(ctx, in, func(ctx context.Context, e *Env) (bool, string) {
			return get(e) != "", name + " is required"
		})
	}
}

// optional values may be unset, a set value still has to pass rule.
func optional(name string, get func(*Env) string, rule func(string) (bool, string)) check {
	return func(ctx context.Context, in rop.Result[*Env]) rop.Result[*Env] {
		return solo.AndValidate(ctx, in, func(ctx context.Context, e *Env) (bool, string) {
			v := get(e)
			if v == "" {
				return true, ""
			}
			ok, why := rule(v)
			return ok, name + " " + why
		})
	}
}

func hasPrefix(prefix string) func(string) (bool, string) {
	return func(v string) (bool, string) {
		return strings.HasPrefix(v, prefix), "must start with " + prefix
	}
}

func isURL(v string) (bool, string) {
	u, err := url.Parse(v)
	return err == nil && u.Scheme != "" && u.Host != "", "must be an absolute URL"
}
