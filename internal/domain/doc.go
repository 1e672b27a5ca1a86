// Package domain contains the core business entities of the application:
// tasks and the users they are assigned to. It represents the heart of the
// system, independent of any specific infrastructure or delivery mechanism.
package domain
