// Package server provides HTTP routing, middleware, and the local stream proxy.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Stream Proxy
//
// [StreamHandler] bridges desktop media players and the platform's
// authenticated stream endpoint. Players speak plain HTTP to
// localhost; the proxy attaches the session's bearer token on the way
// out and passes Range headers through so seeking works.
//
// # Current Usage
//
// When the user runs the serve command, an HTTP server starts on
// localhost:3000 and proxies /stream/{videoID} until interrupted.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
