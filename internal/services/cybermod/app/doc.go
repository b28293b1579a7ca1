// Package app runs cybermod workflows against the host collaborators.
//
// Service threads one explicit Runtime through every call: the document
// store, dice, random tables, narrative output, settings, logger, and
// tracer. Installation is a short step machine (stress, skill, advantage)
// driven either answer by answer through Begin and Answer or end to end
// through Run with a Prompter. Attempts are single-flight per actor.
package app
