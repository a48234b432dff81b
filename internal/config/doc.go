// Package config loads the clientctl configuration.
//
// Configuration lives in a single config.yaml inside the configuration
// directory (default ~/.config/clientctl). A missing file is not an error:
// defaults are used. Values are then overridden from the environment
// (CLIENTCTL_* variables, optionally seeded from a .env file in the working
// directory) and finally from command-line flags by the cmd package.
//
// Example config.yaml:
//
//	endpoint: http://localhost:8080/fdu/client/
//	actorId: 1
//	pageSize: 10
//	requestTimeout: 30s
//	csrf:
//	  discover: true
package config
