// Package config loads the pizzeria parameters file.
//
// The file may be JSON or YAML (chosen by extension). Every key can be
// overridden from the environment with the PIZZERIA_ prefix, for example
// PIZZERIA_STORAGE_CAPACITY=3 or PIZZERIA_TIME_UNIT=10ms.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pizzeria/internal/core/application/pizzeria"
	"pizzeria/internal/pkg/errs"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PIZZERIA"

// ErrInvalidConfiguration wraps every problem found while loading parameters.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Params is the decoded parameters file.
type Params struct {
	// Bakers holds one baking time, in time units, per baker.
	Bakers []int `mapstructure:"bakers"`
	// Couriers holds one [speed, distance] pair per courier.
	Couriers [][]int `mapstructure:"couriers"`
	// StorageCapacity is the number of pizzas the storage can hold.
	StorageCapacity int `mapstructure:"storage_capacity"`

	TimeUnit            time.Duration `mapstructure:"time_unit"`
	IdleWait            time.Duration `mapstructure:"idle_wait"`
	StorageRetryBackoff time.Duration `mapstructure:"storage_retry_backoff"`
	DrainTimeout        time.Duration `mapstructure:"drain_timeout"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout"`
}

// CourierRoute is one validated courier entry.
type CourierRoute struct {
	Speed    int
	Distance int
}

// Default returns the parameters used for keys missing from the file.
func Default() Params {
	return Params{
		TimeUnit:            time.Second,
		IdleWait:            time.Second,
		StorageRetryBackoff: 100 * time.Millisecond,
		DrainTimeout:        30 * time.Second,
		ShutdownTimeout:     20 * time.Second,
	}
}

// Load reads the parameters file at path, applies environment overrides and
// validates the result. Any failure is reported as ErrInvalidConfiguration.
func Load(path string) (Params, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Params{}, fmt.Errorf("%w: read %s: %w", ErrInvalidConfiguration, path, err)
	}

	var p Params
	if err := v.Unmarshal(&p); err != nil {
		return Params{}, fmt.Errorf("%w: decode %s: %w", ErrInvalidConfiguration, path, err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate reports every invalid field at once. Timing rules are the
// pizzeria's own, see pizzeria.Params.Validate.
func (p Params) Validate() error {
	var problems []error

	if p.StorageCapacity < 1 {
		problems = append(problems,
			errs.NewValueIsOutOfRangeError("storage_capacity", p.StorageCapacity, 1, math.MaxInt))
	}

	for i, t := range p.Bakers {
		if t < 1 {
			problems = append(problems,
				errs.NewValueIsOutOfRangeError(fmt.Sprintf("bakers[%d]", i), t, 1, math.MaxInt))
		}
	}

	for i, pair := range p.Couriers {
		param := fmt.Sprintf("couriers[%d]", i)
		if len(pair) != 2 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				param, fmt.Errorf("want [speed, distance], got %d value(s)", len(pair))))
			continue
		}
		if pair[0] < 1 {
			problems = append(problems,
				errs.NewValueIsOutOfRangeError(param+".speed", pair[0], 1, math.MaxInt))
		}
		if pair[1] < 1 {
			problems = append(problems,
				errs.NewValueIsOutOfRangeError(param+".distance", pair[1], 1, math.MaxInt))
		}
	}

	if err := p.Pizzeria().Validate(); err != nil {
		problems = append(problems, err)
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrInvalidConfiguration}, problems...)...)
}

// Routes returns the courier entries as typed routes. It assumes Validate passed.
func (p Params) Routes() []CourierRoute {
	routes := make([]CourierRoute, 0, len(p.Couriers))
	for _, pair := range p.Couriers {
		if len(pair) != 2 {
			continue
		}
		routes = append(routes, CourierRoute{Speed: pair[0], Distance: pair[1]})
	}
	return routes
}

// Pizzeria converts the parameters into pizzeria parameters. Malformed courier
// entries are skipped; Validate reports them.
func (p Params) Pizzeria() pizzeria.Params {
	routes := p.Routes()
	couriers := make([]pizzeria.CourierParams, 0, len(routes))
	for _, r := range routes {
		couriers = append(couriers, pizzeria.CourierParams{Speed: r.Speed, Distance: r.Distance})
	}

	return pizzeria.Params{
		Bakers:              p.Bakers,
		Couriers:            couriers,
		StorageCapacity:     p.StorageCapacity,
		TimeUnit:            p.TimeUnit,
		IdleWait:            p.IdleWait,
		StorageRetryBackoff: p.StorageRetryBackoff,
		DrainTimeout:        p.DrainTimeout,
		ShutdownTimeout:     p.ShutdownTimeout,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("bakers", []int{})
	v.SetDefault("couriers", [][]int{})
	v.SetDefault("storage_capacity", 0)
	v.SetDefault("time_unit", d.TimeUnit)
	v.SetDefault("idle_wait", d.IdleWait)
	v.SetDefault("storage_retry_backoff", d.StorageRetryBackoff)
	v.SetDefault("drain_timeout", d.DrainTimeout)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
}
