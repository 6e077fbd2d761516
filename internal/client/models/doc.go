// Package models defines the wire types exchanged with the codepad API.
package models
