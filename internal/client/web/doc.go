// Package web serves the Lost & Found client as server-rendered HTML for a
// single local user.
//
// The process-wide session plays the role of the browser's durable
// storage. Routes mirror the views of the client: the listing at "/", the
// anonymous-only "/login" and "/register", and the authenticated
// "/{id}/confirmation" pickup form. Guards are chi middleware built from
// package guard. Actions follow Post/Redirect/Get; their notices are shown
// once on the next page.
package web
