// Package services implements the driving port interfaces.
// Services contain the core business logic: the AI flows, the chat
// router, report assembly, the float dataset and settings. They only
// talk to the outside world through driven ports.
package services
