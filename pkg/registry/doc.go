// Package registry provides a generic, type-safe registry for named
// singletons. Output formats, bundled styles and bundled locales each
// register themselves into one through init() functions.
package registry
