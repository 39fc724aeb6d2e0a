// Package plugin loads lint plugins and dispatches callbacks to them.
//
// Loading is all or nothing: LoadFromEnvironment either returns a registry
// holding every configured plugin or a *LoadError naming the first plugin
// that failed and the ErrorKind of the failure. Dispatch calls passes in load
// order and turns a panicking callback into a DispatchFault.
package plugin
