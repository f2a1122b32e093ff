// Package registry holds the static table of cities, the transit operators
// serving them, and how to reach each operator's real-time API.
//
// A Registry is immutable once loaded. It is passed to its consumers at
// construction time so tests can substitute synthetic operators. The default
// table is embedded in the binary; Load reads an alternative YAML file with
// the same shape:
//
//	cities:
//	  Strasbourg: [CTS]
//	operators:
//	  CTS:
//	    protocol: SIRI-lite
//	    api_url: https://api.cts-strasbourg.eu/v1/siri/2.0
//	    endpoint: /stoppoints-discovery
//	    auth_type: basic
//	    requires_token: true
package registry
