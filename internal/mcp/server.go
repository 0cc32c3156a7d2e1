package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/a3tai/resume-extractor/internal/batch"
	"github.com/a3tai/resume-extractor/internal/config"
	"github.com/a3tai/resume-extractor/internal/descriptions"
	"github.com/a3tai/resume-extractor/internal/pdf"
	"github.com/a3tai/resume-extractor/internal/record"
	"github.com/a3tai/resume-extractor/internal/security"
	"github.com/a3tai/resume-extractor/internal/sink"
)

// maxListedFiles caps the file listing in resume_server_info
const maxListedFiles = 10

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	driver    *batch.Driver
	sink      *sink.CSVSink
	paths     *security.PathValidator
	search    *pdf.Search
	validator *pdf.Validator
	mcpServer *server.MCPServer
	logger    zerolog.Logger
}

// NewServer creates a new MCP server instance whose tools are confined to
// cfg.Directory
func NewServer(cfg *config.Config, driver *batch.Driver, csvSink *sink.CSVSink, logger zerolog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if driver == nil {
		return nil, fmt.Errorf("driver cannot be nil")
	}
	if csvSink == nil {
		return nil, fmt.Errorf("sink cannot be nil")
	}

	paths, err := security.NewPathValidator(cfg.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
	)

	s := &Server{
		config:    cfg,
		driver:    driver,
		sink:      csvSink,
		paths:     paths,
		search:    pdf.NewSearch(),
		validator: pdf.NewValidator(cfg.MaxFileSize),
		mcpServer: mcpServer,
		logger:    logger,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"resume_extract_file",
		mcp.WithDescription(descriptions.GetToolDescription("resume_extract_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF résumé, absolute or relative to the configured directory"),
		),
	), s.handleExtractFile)

	s.mcpServer.AddTool(mcp.NewTool(
		"resume_extract_directory",
		mcp.WithDescription(descriptions.GetToolDescription("resume_extract_directory")),
		mcp.WithString("directory",
			mcp.Description("Folder to process (uses the configured directory if empty)"),
		),
		mcp.WithString("output",
			mcp.Description("CSV file to overwrite with the results (optional)"),
		),
	), s.handleExtractDirectory)

	s.mcpServer.AddTool(mcp.NewTool(
		"resume_append_csv",
		mcp.WithDescription(descriptions.GetToolDescription("resume_append_csv")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the PDF résumé"),
		),
		mcp.WithString("output",
			mcp.Description("CSV file to append to (uses the configured output if empty)"),
		),
	), s.handleAppendCSV)

	s.mcpServer.AddTool(mcp.NewTool(
		"resume_validate_file",
		mcp.WithDescription(descriptions.GetToolDescription("resume_validate_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the file to check"),
		),
	), s.handleValidateFile)

	s.mcpServer.AddTool(mcp.NewTool(
		"resume_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("resume_server_info")),
	), s.handleServerInfo)
}

// Handler functions
func (s *Server) handleExtractFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	abs, err := s.paths.ResolveFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
	}

	r := s.driver.ExtractDocument(ctx, abs)
	return mcp.NewToolResultText(formatRecord(r)), nil
}

func (s *Server) handleExtractDirectory(ctx context.Context, request mcp.CallToolRequest) (
	*mcp.CallToolResult, error,
) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}

	absDir, err := s.paths.ResolveDirectory(directory)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
	}

	output := ""
	if out, ok := args["output"].(string); ok && out != "" {
		output, err = s.paths.ResolveFile(out)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
		}
	}

	records, err := s.driver.ExtractBatch(ctx, absDir)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if output != "" {
		if err := s.sink.WriteAll(output, records); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return mcp.NewToolResultText(formatBatch(absDir, output, records)), nil
}

func (s *Server) handleAppendCSV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	abs, err := s.paths.ResolveFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
	}

	output := s.config.Output
	if out, ok := request.GetArguments()["output"].(string); ok && out != "" {
		output = out
	}
	output, err = s.paths.ResolveFile(output)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
	}

	r := s.driver.ExtractDocument(ctx, abs)
	if err := s.sink.Append(output, r); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text := fmt.Sprintf("Data from '%s' has been appended to '%s' (status: %s).\n\n", r.Filename, output, r.Status)
	text += formatRecord(r)
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleValidateFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	abs, err := s.paths.ResolveFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("security validation failed: %v", err)), nil
	}

	result, err := s.validator.ValidateFile(pdf.PDFValidateFileRequest{Path: abs})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.Valid {
		return mcp.NewToolResultText(fmt.Sprintf("PDF file %s is valid and readable", result.Path)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("PDF validation failed for %s: %s", result.Path, result.Message)), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("📁 Directory: %s\n", s.paths.Root())
	text += fmt.Sprintf("📄 Default output: %s\n", s.config.Output)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", s.config.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("⚙️  Backend: %s, skills: %s, columns: %s\n",
		s.config.Backend, s.config.SkillStrategy, s.config.Columns)
	if s.config.CountryCode != "" {
		text += fmt.Sprintf("📞 Phone numbers normalized to +%s\n", s.config.CountryCode)
	} else {
		text += "📞 Phone numbers kept as found\n"
	}
	text += "\n"

	res, err := s.search.SearchDirectory(pdf.PDFSearchDirectoryRequest{
		Directory:  s.paths.Root(),
		IgnoreCase: s.config.IgnoreCase,
	})
	switch {
	case err != nil:
		text += fmt.Sprintf("📂 Directory Contents: unavailable (%v)\n\n", err)
	case res.TotalCount == 0:
		text += "📂 Directory Contents: No PDF files found\n\n"
	default:
		text += fmt.Sprintf("📂 Directory Contents (%d PDF files found):\n", res.TotalCount)
		for i, file := range res.Files {
			if i >= maxListedFiles {
				text += fmt.Sprintf("   ... and %d more files\n", res.TotalCount-maxListedFiles)
				break
			}
			text += fmt.Sprintf("   %d. %s (%d bytes)\n", i+1, file.Name, file.Size)
		}
		text += "\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, name := range descriptions.GetAllToolNames() {
		text += fmt.Sprintf("  • %s\n", name)
	}

	return mcp.NewToolResultText(text), nil
}

// Formatting helpers
func formatRecord(r record.Record) string {
	text := fmt.Sprintf("File: %s\n", r.Filename)
	text += fmt.Sprintf("Status: %s\n", r.Status)
	if r.Error != "" {
		text += fmt.Sprintf("Error: %s\n", r.Error)
	}
	text += fmt.Sprintf("Name: %s\n", r.Name)
	text += fmt.Sprintf("Email: %s\n", r.Email)
	text += fmt.Sprintf("Phone: %s\n", r.Phone)
	text += fmt.Sprintf("Skills: %s\n", record.JoinList(r.Skills, record.SkillsSeparator))
	text += formatList("Experience", r.Experience)
	text += formatList("Education", r.Education)
	return text
}

func formatList(title string, items []string) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s: none\n", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(&b, "  - %s\n", item)
	}
	return b.String()
}

func formatBatch(dir, output string, records record.RecordSet) string {
	summary := batch.Summarize(records)

	text := fmt.Sprintf("Processed %d PDF file(s) in %s\n", summary.Total, dir)
	text += fmt.Sprintf("Succeeded: %d, no text: %d, failed: %d\n", summary.Succeeded, summary.NoText, summary.Failed)
	if output != "" {
		text += fmt.Sprintf("CSV written to: %s\n", output)
	}

	for i, r := range records {
		text += fmt.Sprintf("\n%d. %s [%s]\n", i+1, filepath.Base(r.Path), r.Status)
		text += fmt.Sprintf("   Name: %s | Email: %s | Phone: %s\n", r.Name, r.Email, r.Phone)
		if r.Error != "" {
			text += fmt.Sprintf("   Error: %s\n", r.Error)
		}
	}
	return text
}

// Run serves MCP over stdio until the client disconnects
func (s *Server) Run(_ context.Context) error {
	s.logger.Info().
		Str("directory", s.paths.Root()).
		Str("output", s.config.Output).
		Msg("starting resume MCP server in stdio mode")

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}
