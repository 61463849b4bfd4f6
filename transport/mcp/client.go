package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/ludo/game/engine"
	"github.com/wricardo/mcp-training/ludo/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Ludo",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Ludo - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Bring all four of your tokens around the board and up your home stretch before
the other players.

TURN LOOP:
1. roll_dice for the current player
2. if the state is select_token, call select_token with one of the movable token ids
3. repeat; when the state is player_finished call acknowledge_finish (or wait)

AVAILABLE TOOLS:
- create_session, list_sessions, get_session: manage games
- configure_game, start_game, reset_game: set players and restart
- roll_dice, select_token, acknowledge_finish: play turns
- game_state: current board and whose turn it is
- move_history: past actions
- list_configs: available presets
- game_instructions: the full rules`),
	)

	c.registerTools()
}

func sessionParam() mcp.ToolOption {
	return mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID"))
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Create a new game session. The game starts immediately."),
		mcp.WithString("config_id", mcp.Description("Preset to use, e.g. classic, duel, trio (optional)")),
	), c.handleCreateSession)

	c.mcpServer.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List all active game sessions"),
	), c.handleListSessions)

	c.mcpServer.AddTool(mcp.NewTool("get_session",
		mcp.WithDescription("Get details of a specific session"),
		sessionParam(),
	), c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.NewTool("game_state",
		mcp.WithDescription("Get the current game state: token positions, whose turn it is and what they can do"),
		sessionParam(),
	), c.handleGameState)

	c.mcpServer.AddTool(mcp.NewTool("configure_game",
		mcp.WithDescription("Set the number of players (2-4) and optional names. Takes effect on start_game."),
		sessionParam(),
		mcp.WithNumber("player_count", mcp.Required(), mcp.Description("Number of players, 2 to 4"), mcp.Min(2), mcp.Max(4)),
		mcp.WithArray("player_names", mcp.Description("Player names in seat order"), mcp.WithStringItems()),
	), c.handleConfigure)

	c.mcpServer.AddTool(mcp.NewTool("start_game",
		mcp.WithDescription("Seat the configured players and start a new game"),
		sessionParam(),
	), c.handleStart)

	c.mcpServer.AddTool(mcp.NewTool("roll_dice",
		mcp.WithDescription("Roll the die for the current player"),
		sessionParam(),
		mcp.WithString("intent", mcp.Description("Brief explanation of what you hope to do with this roll")),
	), c.handleRoll)

	c.mcpServer.AddTool(mcp.NewTool("select_token",
		mcp.WithDescription("Move one of the current player's movable tokens by the rolled value"),
		sessionParam(),
		mcp.WithNumber("token_id", mcp.Required(), mcp.Description("Token id (0-3), must be in movable_tokens"), mcp.Min(0), mcp.Max(3)),
		mcp.WithString("intent", mcp.Description("Brief explanation of why this token")),
	), c.handleSelect)

	c.mcpServer.AddTool(mcp.NewTool("acknowledge_finish",
		mcp.WithDescription("Continue after a player finished"),
		sessionParam(),
	), c.handleAcknowledge)

	c.mcpServer.AddTool(mcp.NewTool("reset_game",
		mcp.WithDescription("Send every token back to base and restart with the same players"),
		sessionParam(),
	), c.handleReset)

	c.mcpServer.AddTool(mcp.NewTool("move_history",
		mcp.WithDescription("Get the action history for a session"),
		sessionParam(),
		mcp.WithNumber("page", mcp.Description("Page number")),
		mcp.WithNumber("limit", mcp.Description("Items per page")),
		mcp.WithString("order", mcp.Description("asc or desc (default desc)"), mcp.Enum("asc", "desc")),
	), c.handleMoveHistory)

	c.mcpServer.AddTool(mcp.NewTool("list_configs",
		mcp.WithDescription("List available game presets"),
	), c.handleListConfigs)

	c.mcpServer.AddTool(mcp.NewTool("game_instructions",
		mcp.WithDescription("Get the complete game rules"),
	), c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

func sessionPath(request mcp.CallToolRequest, suffix string) (string, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return "", err
	}
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix, nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body := map[string]string{}
	if configID := request.GetString("config_id", ""); configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s",
		session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		turn := "-"
		if s.GameState != nil {
			turn = engine.DescribeTurn(s.GameState)
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Created: %s) %s\n",
			s.ID, s.ConfigName, s.CreatedAt.Format("15:04:05"), turn)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(request, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", path, nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(request, "/state")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", path, nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleConfigure(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(request, "/configure")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count, err := request.RequireInt("player_count")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]any{
		"player_count": count,
		"player_names": request.GetStringSlice("player_names", nil),
	}
	return c.action(ctx, path, body)
}

func (c *Client) handleStart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(ctx, request, "/start")
}

func (c *Client) handleRoll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	// intent is for the caller's own reasoning and is not sent
	return c.simpleAction(ctx, request, "/roll")
}

func (c *Client) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(request, "/select")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tokenID, err := request.RequireInt("token_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return c.action(ctx, path, map[string]int{"token_id": tokenID})
}

func (c *Client) handleAcknowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(ctx, request, "/acknowledge")
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return c.simpleAction(ctx, request, "/reset")
}

func (c *Client) simpleAction(ctx context.Context, request mcp.CallToolRequest, suffix string) (*mcp.CallToolResult, error) {
	path, err := sessionPath(request, suffix)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return c.action(ctx, path, nil)
}

func (c *Client) action(ctx context.Context, path string, body any) (*mcp.CallToolResult, error) {
	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", path, body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := sessionPath(request, "/history")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if page := request.GetInt("page", 0); page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order := request.GetString("order", ""); order != "" {
		params.Set("order", order)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, cfg := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Players: %d\n\n",
			cfg.Name, cfg.ConfigID, cfg.Description, cfg.PlayerCount)
	}

	return mcp.NewToolResultText(b.String()), nil
}

const instructions = `Ludo - Complete Rules

BOARD:
• A ring of 52 cells shared by everyone, numbered 0-51.
• Each colour starts on its own cell: Green 0, Red 13, Blue 26, Yellow 39.
  With two players the seats are Green and Blue.
• Star cells 0, 8, 13, 21, 26, 34, 39 and 47 are safe: nobody is captured there.
• After almost a full lap a token turns into its private home stretch
  (positions 52-57). Position 57 is home.

TURN:
• roll_dice, then select_token with one of the movable_tokens.
• A token in base (position -1) can only enter on a 1. It enters on the start cell.
• A token on the stretch must land exactly on 57; overshooting rolls are not allowed.
• Rolling a 1 or a 6 gives another roll. Any other roll passes the turn once moved.
• If no token can move, the turn passes (or you roll again after a 1 or 6).

CAPTURES:
• Landing on a non-safe cell holding opposing tokens sends them back to base.

STREAKS:
• Three 1s in a row: your farthest token on the ring goes back to base.
• Seven 1s in a row: you finish immediately.
• Three 6s in a row with nothing else able to move: a base token enters automatically.

FINISHING:
• A player finishes when all four tokens are home (or by seven 1s).
• The game pauses in player_finished; call acknowledge_finish to continue.
• When only one player is left the game is over. The first to finish wins.

STATES:
• awaiting_roll → roll_dice
• select_token → select_token
• player_finished → acknowledge_finish
• game_over → reset_game or start_game`

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// Formatting

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func formatPosition(position int) string {
	loc := engine.Locate(position)
	switch loc.Zone {
	case engine.ZoneBase:
		return "base"
	case engine.ZoneTrack:
		marker := ""
		if engine.IsSafe(loc.Index) {
			marker = "*"
		}
		return fmt.Sprintf("cell %d%s", loc.Index, marker)
	case engine.ZoneHome:
		return "HOME"
	default:
		return fmt.Sprintf("stretch %d/%d", loc.Index+1, engine.HomeStretchSize)
	}
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "State: %s | Dice: %d | Actions: %d\n",
		state.State, state.DiceValue, state.TotalActions)
	fmt.Fprintf(&b, "%s\n", engine.DescribeTurn(state))
	if state.ConsecutiveOnes > 0 || state.ConsecutiveSixes > 0 {
		fmt.Fprintf(&b, "Streak: %d x 1, %d x 6\n", state.ConsecutiveOnes, state.ConsecutiveSixes)
	}
	if len(state.MovableTokens) > 0 {
		fmt.Fprintf(&b, "Movable tokens: %v\n", state.MovableTokens)
	}
	b.WriteString("\n")

	for _, p := range state.Players {
		marker := " "
		if p.ID == state.CurrentPlayerIndex {
			marker = ">"
		}
		status := ""
		if p.HasFinished {
			status = " (finished)"
		}
		fmt.Fprintf(&b, "%s %s [%s]%s home %d/%d\n",
			marker, p.Name, p.Color, status, p.TokensHome(), engine.TokensPerPlayer)
		for _, t := range p.Tokens {
			fmt.Fprintf(&b, "    token %d: %s\n", t.ID, formatPosition(t.Position))
		}
		if at := engine.ThreatenedTokens(state, p.ID); len(at) > 0 {
			fmt.Fprintf(&b, "    at risk: %v\n", at)
		}
	}

	if state.State == engine.GameOver.String() {
		b.WriteString("\n🏁 GAME OVER")
		if state.Winner != nil && *state.Winner < len(state.Players) {
			fmt.Fprintf(&b, " - winner: %s", state.Players[*state.Winner].Name)
		}
		b.WriteString("\n")
	}
	if len(state.FinishOrder) > 0 {
		names := make([]string, 0, len(state.FinishOrder))
		for _, id := range state.FinishOrder {
			if id >= 0 && id < len(state.Players) {
				names = append(names, state.Players[id].Name)
			}
		}
		fmt.Fprintf(&b, "Finish order: %s\n", strings.Join(names, ", "))
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if !result.Applied {
		b.WriteString("⚠️ Not allowed in the current state; nothing changed.\n\n")
	}
	for _, ev := range result.Events {
		fmt.Fprintf(&b, "• %s\n", ev.Message)
	}
	if len(result.Events) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistoryEntry(e engine.HistoryEntry) string {
	player := fmt.Sprintf("P%d", e.PlayerID+1)
	switch e.Kind {
	case engine.KindRoll:
		return fmt.Sprintf("%s rolled %d", player, e.Dice)
	case engine.KindEnter, engine.KindAutoEnter:
		return fmt.Sprintf("%s %s token %d -> %s", player, e.Kind, e.TokenID, formatPosition(e.To))
	case engine.KindMove, engine.KindPenalty:
		return fmt.Sprintf("%s %s token %d %s -> %s", player, e.Kind, e.TokenID, formatPosition(e.From), formatPosition(e.To))
	case engine.KindCapture:
		return fmt.Sprintf("%s %s", player, e.Detail)
	case engine.KindHome:
		return fmt.Sprintf("%s token %d home", player, e.TokenID)
	case engine.KindFinish:
		return fmt.Sprintf("%s finished %s", player, e.Detail)
	case engine.KindTurn:
		return fmt.Sprintf("%s to play", player)
	case engine.KindGameOver:
		return "game over"
	case engine.KindReset:
		return "game reset"
	default:
		return string(e.Kind)
	}
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (Page %d/%d) - Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalEntries)

	for _, e := range history.Entries {
		fmt.Fprintf(&b, "%d. %s\n", e.Seq, formatHistoryEntry(e))
	}
	if len(history.Entries) == 0 {
		b.WriteString("(no entries)\n")
	}

	return b.String()
}
