// Package mcp exposes the program and exercise catalogs to MCP clients.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("HypertroQ", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("HypertroQ training-program server. Query hypertrophy programs, their sessions, weekly volume stats, and the exercise library. All data is scoped to the authenticated coach account."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolGetProgramStats, Handler: h.getProgramStats},
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExercise, Handler: h.getExercise},
		server.ServerTool{Tool: toolFindExercisesForMuscle, Handler: h.findExercisesForMuscle},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resProgramCatalog, Handler: h.programCatalog},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resProgramCatalog = mcp.NewResource(
	"hypertroq://program_catalog",
	"Program Catalog",
	mcp.WithResourceDescription("All training programs with split type, structure, and session counts"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"hypertroq://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("The full exercise library with equipment and per-muscle volume contributions"),
	mcp.WithMIMEType("application/json"),
)
