// Package templates holds the page chrome and shared fragments of the admin
// console. Components are plain templ.Components so handlers and the data
// table compose them freely.
package templates
