// Package config loads and holds the toolctl configuration: the set of
// backend tool services, where to reach them, and the active environment.
//
// Configuration is layered: built-in defaults, then the user file at
// ~/.config/toolctl/config.yaml, then the project file at
// ./.toolctl/config.yaml. Later layers override earlier ones; services are
// merged by name.
//
// The Store wraps the loaded configuration and fans out environment-change
// notifications, so components holding sessions against the previous
// environment can discard them before their next call.
package config
