/*
Package matrixsdk provides the wire types and a small HTTP client for the
Matrix social API.

# Overview

The request and response types in this package are the JSON bodies the
server reads and writes, so the server handlers and the client share one
definition of the API surface.

The session is carried in an HTTP-only cookie. Client keeps a cookie jar,
so after a successful Login every following call is authenticated until
Logout:

	client := matrixsdk.NewClient("https://api.example.com")

	msg, err := client.SignUp(ctx, matrixsdk.SignUpRequest{
		Username: "alice",
		FullName: "Alice Smith",
		Email:    "alice@example.com",
		Password: "Str0ng!Pass",
	})

	msg, err = client.Login(ctx, matrixsdk.LoginRequest{
		Username: "alice",
		Password: "Str0ng!Pass",
	})

	profile, err := client.GetProfile(ctx, "me")

# Errors

Every non-2xx response is returned as an *APIError carrying the status
code, the error kind ("validation_error", "conflict", "not_found",
"auth_error", "rate_limited", "unauthenticated") and the human readable
message. Validation failures also carry a field to reason map.

	var apiErr *matrixsdk.APIError
	if errors.As(err, &apiErr) && apiErr.Code == matrixsdk.ErrorCodeValidation {
		for field, reason := range apiErr.Details {
			fmt.Println(field, reason)
		}
	}
*/
package matrixsdk
