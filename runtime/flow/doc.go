// Package flow implements the scoring graph runtime: flows own registered
// node graphs, evaluate them bottom-up for one target at a time and publish
// labeled outputs; the Flows registry hands flows out under two-phase
// ownership so registration never races with evaluation.
package flow
