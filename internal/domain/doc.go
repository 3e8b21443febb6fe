// Package domain contains the core domain model for hubblefit.
//
// The domain is format- and presentation-agnostic: it does not depend on YAML
// parsing, the filesystem, or any solver library. Infra/adapters map into/from
// these types.
package domain
