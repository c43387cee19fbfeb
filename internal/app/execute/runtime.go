// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"fmt"

	"prog-cli/internal/config"
	"prog-cli/internal/issue"
	"prog-cli/internal/runtime"
)

// ResolveRuntime applies runtime-selection precedence:
//  1. CLI override
//  2. Config default runtime
//  3. Native
func ResolveRuntime(override runtime.RuntimeType, cfg *config.Config) (runtime.RuntimeType, error) {
	if override != "" {
		if ok, errs := override.IsValid(); !ok {
			return "", errs[0]
		}
		return override, nil
	}

	if cfg != nil && cfg.DefaultRuntime != "" {
		configRuntime := runtime.RuntimeType(cfg.DefaultRuntime)
		if ok, errs := configRuntime.IsValid(); !ok {
			return "", fmt.Errorf("invalid default_runtime in config: %w", errs[0])
		}
		return configRuntime, nil
	}

	return runtime.RuntimeTypeNative, nil
}

// SelectRuntime resolves the runtime type and fetches it from reg.
func SelectRuntime(reg *runtime.Registry, override runtime.RuntimeType, cfg *config.Config) (runtime.Runtime, error) {
	typ, err := ResolveRuntime(override, cfg)
	if err != nil {
		return nil, err
	}

	rt, err := reg.Get(typ)
	if err == nil && !rt.Available() {
		err = fmt.Errorf("runtime %q is not available on this system", typ)
	}
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("select runtime").
			WithResource(string(typ)).
			WithIssue(issue.RuntimeNotAvailableId).
			Wrap(err).
			BuildError()
	}
	return rt, nil
}
