// Package session keeps calculator engines alive across requests. Each
// session's engine state is persisted in the store and restored for every
// batch of key presses; presses on one session are serialized, and every
// change to a session's display is fanned out to its subscribers.
package session
