// Package page turns a captured council results page into the plain text the
// schedule extractor reads.
//
// The page package parses HTML with goquery, drops script and style content,
// and emits each visible text node on its own line. Text obtained some other
// way can be brought to the same shape with Flatten.
package page
