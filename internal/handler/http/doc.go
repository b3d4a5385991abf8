// Package http implements the browser-facing transport of the predictor.
//
// Every page route shares one server-side session, resumed from a signed
// cookie by withSession before the handler runs and saved after it returns.
// Handlers read forms and uploads, delegate to the service layer, then render
// an embedded HTML page, redirect, or stream the prediction as CSV.
package http
