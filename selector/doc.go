// Package selector turns computed flow outputs into action decisions: a
// Selector picks an action label from a target's scores and an Actions set
// resolves the label to an application-defined action value.
package selector
