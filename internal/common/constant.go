package common

// SessionCookieName is the cookie that carries the signed session.
const SessionCookieName = "orio_session"

// UploadsURLPrefix is the public path prefix of stored report images.
const UploadsURLPrefix = "/uploads/"

// NumericIDLength is the number of digits in object and report identifiers.
const NumericIDLength = 6
