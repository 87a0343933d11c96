// Package category defines the bin categories and the aliases that name them
// on council pages and in calendar event titles.
//
// A Table is ordered: alias occurrences are searched in declared order and
// title matches are reported in table order. Matching ignores case.
package category
