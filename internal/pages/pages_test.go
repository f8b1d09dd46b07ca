package pages

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/bandsite/internal/services"
	"github.com/desertthunder/bandsite/internal/shared"
	mocks "github.com/desertthunder/bandsite/internal/testing"
)

func album(slug, title, releaseDate string) services.Album {
	a := services.Album{Metadata: services.AlbumMetadata{Title: title, ReleaseDate: releaseDate}}
	a.Slug = slug
	a.Title = title
	return a
}

func song(slug, title, musicVideo string) services.Song {
	s := services.Song{Metadata: services.SongMetadata{Title: title, MusicVideo: musicVideo}}
	s.Slug = slug
	s.Title = title
	return s
}

func newTestEngine(content *mocks.MockContentStore, music *mocks.MockMusicCatalog, video *mocks.MockVideoCatalog) *Engine {
	if content == nil {
		content = &mocks.MockContentStore{}
	}
	if music == nil {
		music = &mocks.MockMusicCatalog{}
	}
	if video == nil {
		video = &mocks.MockVideoCatalog{}
	}
	return NewEngine(music, video, content, EngineOpts{Logger: shared.NewLogger(io.Discard)})
}

func TestEngineHome(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles albums tracks and videos", func(t *testing.T) {
		content := &mocks.MockContentStore{
			AlbumList: []services.Album{album("dude-ranch", "Dude Ranch", "1997-06-17")},
		}
		music := &mocks.MockMusicCatalog{
			Tracks:  []services.SpotifyTrack{{ID: "t1", Name: "Dammit", DurationMS: 165000}},
			Artists: []services.SpotifyArtist{{ID: "a1", Name: "blink-182"}},
		}
		video := &mocks.MockVideoCatalog{
			Videos: []services.YouTubeVideo{{ID: services.YouTubeVideoID{VideoID: "v1"}}},
		}

		data, err := newTestEngine(content, music, video).Home(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data.Albums) != 1 || data.Albums[0].Slug != "dude-ranch" {
			t.Errorf("unexpected albums %+v", data.Albums)
		}
		if len(data.TopTracks) != 1 || data.TopTracks[0].Title != "Dammit" {
			t.Errorf("unexpected tracks %+v", data.TopTracks)
		}
		if len(data.RecentVideos) != 1 || data.RecentVideos[0].ID != "v1" {
			t.Errorf("unexpected videos %+v", data.RecentVideos)
		}
	})

	t.Run("content store failure blocks the page", func(t *testing.T) {
		content := &mocks.MockContentStore{Err: errors.New("bucket down")}

		if _, err := newTestEngine(content, nil, nil).Home(ctx); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("empty enrichment still renders", func(t *testing.T) {
		data, err := newTestEngine(nil, nil, nil).Home(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data.TopTracks) != 0 || len(data.RecentVideos) != 0 {
			t.Errorf("expected empty enrichment, got %+v", data)
		}
	})
}

func TestEngineMusic(t *testing.T) {
	ctx := context.Background()

	content := &mocks.MockContentStore{
		AlbumList: []services.Album{album("enema-of-the-state", "Enema of the State", "1999-06-01")},
		SongList:  []services.Song{song("whats-my-age-again", "What's My Age Again?", "")},
	}
	music := &mocks.MockMusicCatalog{
		Tracks: []services.SpotifyTrack{{ID: "t1", Name: "What's My Age Again?"}},
	}

	data, err := newTestEngine(content, music, nil).Music(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Albums) != 1 || len(data.Songs) != 1 || len(data.Tracks) != 1 {
		t.Errorf("unexpected music data %+v", data)
	}
}

func TestEngineVideos(t *testing.T) {
	video := &mocks.MockVideoCatalog{
		Videos: []services.YouTubeVideo{{ID: services.YouTubeVideoID{VideoID: "v1"}}},
	}

	data := newTestEngine(nil, nil, video).Videos(context.Background())
	if len(data.MusicVideos) != 1 {
		t.Errorf("expected music videos, got %+v", data)
	}
	if data.LivePerformances == nil || data.Interviews == nil {
		t.Error("expected empty slices for empty categories, got nil")
	}
}

func TestEngineDetailPages(t *testing.T) {
	ctx := context.Background()

	t.Run("album detail", func(t *testing.T) {
		content := &mocks.MockContentStore{
			AlbumList: []services.Album{album("dude-ranch", "Dude Ranch", "1997-06-17")},
		}
		music := &mocks.MockMusicCatalog{
			Tracks: []services.SpotifyTrack{{ID: "t1", Name: "Dammit"}},
		}

		data, err := newTestEngine(content, music, nil).AlbumDetail(ctx, "dude-ranch")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data.Album.Metadata.Title != "Dude Ranch" {
			t.Errorf("unexpected album %+v", data.Album)
		}
		if len(data.Tracks) != 1 {
			t.Errorf("expected streaming tracks, got %+v", data.Tracks)
		}
	})

	t.Run("missing album yields not found", func(t *testing.T) {
		_, err := newTestEngine(nil, nil, nil).AlbumDetail(ctx, "ghost")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("song detail embeds linked music video", func(t *testing.T) {
		content := &mocks.MockContentStore{
			SongList: []services.Song{song("dammit", "Dammit", "https://www.youtube.com/watch?v=9Ht5RZpzPqw")},
		}
		video := &mocks.MockVideoCatalog{
			Videos: []services.YouTubeVideo{{ID: services.YouTubeVideoID{VideoID: "9Ht5RZpzPqw"}}},
		}

		data, err := newTestEngine(content, nil, video).SongDetail(ctx, "dammit")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data.MusicVideo == nil || data.MusicVideo.ID != "9Ht5RZpzPqw" {
			t.Errorf("expected embedded video, got %+v", data.MusicVideo)
		}
	})

	t.Run("song without video link leaves field nil", func(t *testing.T) {
		content := &mocks.MockContentStore{
			SongList: []services.Song{song("josie", "Josie", "")},
		}

		data, err := newTestEngine(content, nil, nil).SongDetail(ctx, "josie")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data.MusicVideo != nil {
			t.Errorf("expected nil video, got %+v", data.MusicVideo)
		}
	})
}

func TestEngineCollections(t *testing.T) {
	ctx := context.Background()

	t.Run("tours", func(t *testing.T) {
		content := &mocks.MockContentStore{
			TourList: []services.Tour{{Metadata: services.TourMetadata{TourName: "Warped Tour", Year: "1997"}}},
		}

		data, err := newTestEngine(content, nil, nil).Tours(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data.Tours) != 1 {
			t.Errorf("unexpected tours %+v", data.Tours)
		}
	})

	t.Run("timeline failure propagates", func(t *testing.T) {
		content := &mocks.MockContentStore{Err: errors.New("bucket down")}

		if _, err := newTestEngine(content, nil, nil).Timeline(ctx); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("search never fails", func(t *testing.T) {
		content := &mocks.MockContentStore{Err: errors.New("bucket down")}

		data := newTestEngine(content, nil, nil).Search(ctx, "dammit")
		if data.Results == nil || data.Results.Albums == nil {
			t.Errorf("expected empty result sets, got %+v", data.Results)
		}
	})
}
