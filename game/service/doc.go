// Package service provides the business logic layer for the jigsaw game.
//
// The service package implements:
//   - Multi-session puzzle management
//   - Drag, place and undo processing
//   - Drop history with pagination
//   - Configuration listing, loading and saving
//
// Core Interfaces:
//
// GameService is the main service interface used by the REST API and, through
// it, the MCP client. SessionManager stores sessions and ConfigManager loads
// puzzle configurations.
//
// Each session owns a table.Table: a placement controller running against
// headless sprites. Rejected drops and ignored drags are reported in the
// MoveResult, not as errors. Errors are reserved for unknown sessions and
// configuration problems.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, _ := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Place(ctx, info.ID, 1, 0, 0)
package service
