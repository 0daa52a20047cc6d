// Package config defines the stitchd configuration file format and its
// loader.
//
// A configuration names the remote endpoints to stitch, an optional type
// filter expression, gateway serving options, and logging options. Files may
// be YAML or JSON; the format is detected from the file extension (.yaml and
// .yml parse as YAML, everything else as JSON).
//
//	endpoints:
//	  - moniker: reviews
//	    url: https://reviews.internal/graphql
//	    headers:
//	      Authorization: Bearer s3cret
//	filter: 'kind == "OBJECT" and not hasPrefix(name, "__")'
//	serve:
//	  addr: ":4480"
//	  path: /graphql
//	log:
//	  level: info
//	  format: text
package config
