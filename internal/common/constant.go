package common

// AuthorizationHeaderName carries the bearer credential on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the only accepted authorization scheme.
const BearerScheme = "Bearer"
