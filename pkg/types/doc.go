// Package types defines the shared data types, store-key constants, and
// standard errors for the Wardrobe identity state manager.
package types
