// Package services implements the driving port interfaces.
// Services contain the core logic of the knowledge query engine (fact
// index, option picker, query session, missions) and orchestrate calls
// to driven ports (lesson source, progress store, image search, config).
//
// Services are pure Go with no CGO.
package services
