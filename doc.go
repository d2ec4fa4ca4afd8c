// Package main is the entry point of FieldCMS, a small content management
// system whose content types are built from field types.
//
// It ships a Date field, a Publishing Date field that hides content outside
// of its window, and a date toolbox converting PHP style date formats. Content
// is stored with gorm in MySQL, PostgreSQL or SQLite and served by fiber.
//
// Run "fieldcms start" to serve the site and its administration, or
// "fieldcms format check --date Y-m-d" to try out a date format.
package main
