// Package calendar exports grouped collection days as an iCalendar feed that
// calendar applications can subscribe to.
package calendar
