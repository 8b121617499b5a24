// Package server exposes a loaded instructions document over HTTP.
//
// # Static endpoints
//
// Every step can be fetched at rest in the pipeline's formats:
//
//	GET /healthz                 build info
//	GET /steps                   step count, captions and document hash
//	GET /steps/{n}/layout        frame list as JSON
//	GET /steps/{n}.svg           step as SVG
//	GET /steps/{n}.png           step as PNG
//	GET /steps/{n}/tree.svg      component tree diagram
//
// Query parameters width, scale and caption override the render options.
//
// # Sessions
//
// A session is a playback controller owned by the server. Clients navigate
// it and poll its scene; each poll advances the running transition to the
// current time, so a client polling at its frame rate sees the animation:
//
//	POST   /sessions                  create, returns {"id": ...}
//	GET    /sessions/{id}             scene state as JSON
//	GET    /sessions/{id}/scene.svg   current scene as SVG
//	POST   /sessions/{id}/next        also prev, restart, skip
//	POST   /sessions/{id}/goto/{n}
//	POST   /sessions/{id}/resize?width=640
//	DELETE /sessions/{id}
//
// Each session has its own mutex; requests for different sessions run
// concurrently.
package server
