// Package api implements the HTTP client for the Reel platform API.
//
// # Client
//
// [Client] wraps all endpoints the terminal app consumes: auth exchanges,
// the recommendation feed, per-video engagement (likes, views, comments),
// user profiles, and the moderation console. Requests share one code path
// ([Client.doRequest]) that throttles through a [rate.Limiter], attaches the
// bearer credential, and maps non-2xx responses to typed errors.
//
// # Authentication
//
// The login exchange is an OAuth2 password grant ([oauth2.Config.PasswordCredentialsToken])
// against /auth/login. Refresh is the platform's own scheme: GET /auth/refresh
// with the refresh token presented as the bearer credential.
//
// The [BearerSource] interface decouples the client from credential storage:
// the session manager implements it, and the client reads the token once per
// outgoing request so a mid-flight refresh is picked up by the next call.
//
// # Error Handling
//
// Typed errors from the shared package:
//   - [shared.ErrTokenExpired] : 401 response, session renewal required
//   - [shared.ErrServerRejected] : non-2xx with the server's detail preserved
//   - [shared.ErrAPIRequest] : request could not complete
//   - [shared.ErrEmptyComment] : rejected locally before any request
package api
