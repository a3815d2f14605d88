// Package models defines the core domain models for the mentorship dashboard.
//
// # Models
//
//   - Person: a mentee or a mentor, discriminated by IsMentor
//   - Task: a free-form to-do item owned by one Person
//   - Observation: a dated note written by the Person's mentor
//   - Meetings: the five fixed mentorship meeting slots
//   - Checklist: the ten fixed onboarding funnel steps
//
// # Design Principles
//
// 1. **Fixed schemas are arrays**: Meetings and Checklist are fixed-size arrays so a
// record can never gain or lose a slot or a step.
// 2. **Weak mentor references**: a mentee points at its mentor by name, not by ID.
// Renaming or deleting the mentor leaves the reference dangling.
// 3. **Value semantics**: records are copied in and out of the store with Clone, and
// compared with Equal instead of serialized snapshots.
package models
