// Package flow holds the state shared by the form workflows: the
// Idle/Submitting/Resolved submission machine and staged photos with
// temporary preview copies.
package flow
