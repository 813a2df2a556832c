// Package toolsvc serves the tool configuration API that registry builds
// read through toolconfig.Client.
//
// Routes:
//
//	GET    /api/tools                  list every tool record
//	POST   /api/tools                  create a record (admin)
//	POST   /api/tools/{id}/toggle      set enabled, and optionally premium (admin)
//	DELETE /api/tools/{id}             delete a record (admin)
//	GET    /api/favorites              list the caller's favorite tool names
//	POST   /api/favorites              add {"toolName": "..."}
//	DELETE /api/favorites/{toolName}   remove a favorite
//
// Admin routes require "Authorization: Bearer <admin token>". Favorites
// routes are mounted only when a favorites store is configured and take
// the caller from the X-User header. Errors are JSON objects of the form
// {"error": "..."}.
package toolsvc
