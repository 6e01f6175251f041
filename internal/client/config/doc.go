// Package config assembles the runtime settings of the BreedBook CLI from
// defaults, an optional .env file, environment variables and command-line
// flags, in that order of precedence.
package config
