package display

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/bandsite/internal/shared"
)

// TrackExport bundles a named track listing for export.
type TrackExport struct {
	Name   string  `json:"name"`
	Tracks []Track `json:"tracks"`
}

// ExportToCSV converts a track export to CSV with columns: ID, Title, Artist, Album, Duration, SpotifyURL
func ExportToCSV(export *TrackExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "SpotifyURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range export.Tracks {
		record := []string{
			track.ID,
			track.Title,
			track.Artist,
			track.Album,
			track.Duration,
			track.SpotifyURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a track export to a Markdown track listing
func ExportToMarkdown(export *TrackExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Name))
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(export.Tracks)))

	buf.WriteString("## Tracks\n\n")
	for i, track := range export.Tracks {
		albumPart := ""
		if track.Album != UnknownAlbum {
			albumPart = fmt.Sprintf(" (%s)", track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.Artist, track.Title, albumPart, track.Duration))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a track export to pretty-printed JSON
func ExportToJSON(export *TrackExport) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// VideoExport bundles a named video listing for export.
type VideoExport struct {
	Name   string  `json:"name"`
	Videos []Video `json:"videos"`
}

// ExportVideosToCSV converts a video export to CSV with columns: ID, Title, Channel, Duration, Views, WatchURL
func ExportVideosToCSV(export *VideoExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Channel", "Duration", "Views", "WatchURL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range export.Videos {
		record := []string{
			video.ID,
			video.Title,
			video.Channel,
			video.Duration,
			video.Views,
			video.WatchURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportVideosToMarkdown converts a video export to a Markdown listing
func ExportVideosToMarkdown(export *VideoExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Name))
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(export.Videos)))

	for i, video := range export.Videos {
		durationPart := ""
		if video.Duration != "" {
			durationPart = fmt.Sprintf(" [%s]", video.Duration)
		}
		buf.WriteString(fmt.Sprintf("%d. [%s](%s)%s\n", i+1, video.Title, video.WatchURL, durationPart))
	}

	return buf.Bytes(), nil
}

// WriteExport writes a track export to disk in the requested format
// (csv, md, or json). Defaults the filename to the export name.
func WriteExport(export *TrackExport, format, filepath string) (string, error) {
	return writeExportFile(export.Name, format, filepath,
		func() ([]byte, error) { return ExportToCSV(export) },
		func() ([]byte, error) { return ExportToMarkdown(export) },
		func() ([]byte, error) { return ExportToJSON(export) },
	)
}

// WriteVideoExport writes a video export to disk in the requested format.
func WriteVideoExport(export *VideoExport, format, filepath string) (string, error) {
	return writeExportFile(export.Name, format, filepath,
		func() ([]byte, error) { return ExportVideosToCSV(export) },
		func() ([]byte, error) { return ExportVideosToMarkdown(export) },
		func() ([]byte, error) { return shared.MarshalJSON(export, true) },
	)
}

func writeExportFile(name, format, filepath string, toCSV, toMarkdown, toJSON func() ([]byte, error)) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case "csv":
		data, err = toCSV()
		ext = ".csv"
	case "md", "markdown":
		data, err = toMarkdown()
		ext = ".md"
	case "json", "":
		data, err = toJSON()
		ext = ".json"
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", err
	}

	if filepath == "" {
		filepath = name + ext
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return filepath, nil
}
