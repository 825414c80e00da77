package statuspage

import "github.com/icecave/relay/message"

// StatusMessage returns a short, human-readable description of the given
// status code.
func StatusMessage(status message.StatusCode) string {
	switch status {
	// 4xx
	case message.StatusInvalidRequest:
		return "Your browser has sent a malformed request."
	case message.StatusUnauthorized:
		return "You must be authenticated to use this service."
	case message.StatusForbidden:
		return "You do not have access to this service."
	case message.StatusNotFound:
		return "The page you've requested could not be found."
	case message.StatusMethodNotAllowed:
		return "The request method is not supported by this service."
	case message.StatusNotAcceptable:
		return "The content of this page is not accepted by your browser."

	// 5xx
	case message.StatusInternalServerError:
		return "The service you've requested could not be contacted, please try again."
	case message.StatusNotImplemented:
		return "The feature you've requested is not supported."
	case message.StatusBadGateway:
		return "The service you've requested sent an invalid response, please try again."
	}

	if n := status.Number(); 400 <= n && n <= 599 {
		return "We're sorry, something went wrong!"
	}

	return "That's all we know."
}
