// Package template renders outreach messages.
//
// A message body is parsed once into literal runs and named slots
// ({{ name }}). Rendering and variable extraction walk the same parsed
// form, so the declared variable list of a template can never disagree with
// what Render fills in. Slots absent from the variable map render as the
// empty string.
//
// Per-artist templates are generated with Liquid: artist data is baked in
// at generation time while the contact slots (contact_name, sender_name,
// unsubscribe_url) are left in place for Render.
package template
