// Package scheduler fires a callback at calendar instants evaluated in a named
// timezone, and provides the job that sends the good-morning email.
package scheduler
