// Package util provides small generic helpers shared across the library.
package util
