// Package campaign implements outreach campaign bookkeeping.
//
// A campaign binds a template, an optional artist and a target filter under
// a name. Sends made with a campaign id bump its sent counter; nothing else
// mutates a campaign after creation except explicit updates.
//
// Repository implementations live in repository/postgres/.
package campaign
