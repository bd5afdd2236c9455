package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	msgContentTypeJSONRequired = "content type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgEmailPasswordRequired   = "email and password are required"
	msgInvalidCredentials      = "invalid email or password"
	msgEmailAlreadyExists      = "email already exists"
	msgPasswordProcessFail     = "failed to process password"
	msgCreateAccountFail       = "failed to create account"
	msgGenerateTokenFail       = "failed to generate token"
	msgLoginSuccess            = "login successful"
	msgRegisterSuccess         = "account created"
	msgLogoutSuccess           = "logged out"
	msgUserNotFound            = "user not found"
	msgLoadUserFail            = "failed to load user"
)
