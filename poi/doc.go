// Package poi loads the points of interest used as trip origins and
// destinations from a remote spreadsheet CSV export.
package poi
