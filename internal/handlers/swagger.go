package handlers

// @title Todo API
// @version 1.0
// @description In-memory todo list served from a single function. Records live as long as the execution context.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /

// @tag.name todos
// @tag.description Todo item operations
