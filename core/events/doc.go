// Package events defines the progress events emitted on the event bus while
// a potential run executes.
//
// Available event types:
//   - CaseComputed: pipeline finished for one measure case
//   - PairCombined: combination attempt for a reduction/increase pair
package events
