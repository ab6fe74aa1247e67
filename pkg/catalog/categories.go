package catalog

import "sort"

// Category codes stored in the catalog's cat column. The set is fixed: the
// external ingestion process only ever writes codes from this vocabulary,
// and every code must belong to exactly one label group below or records
// carrying it become unreachable through label filtering.
const (
	CatMovies          = "movies"
	CatMoviesBDFull    = "movies_bd_full"
	CatMoviesBDRemux   = "movies_bd_remux"
	CatMoviesX264      = "movies_x264"
	CatMoviesX2643D    = "movies_x264_3d"
	CatMoviesX2644K    = "movies_x264_4k"
	CatMoviesX264720   = "movies_x264_720"
	CatMoviesX265      = "movies_x265"
	CatMoviesX2654K    = "movies_x265_4k"
	CatMoviesX2654KHDR = "movies_x265_4k_hdr"
	CatMoviesXvid      = "movies_xvid"
	CatMoviesXvid720   = "movies_xvid_720"

	CatTV    = "tv"
	CatTVSD  = "tv_sd"
	CatTVUHD = "tv_uhd"

	CatGamesPCISO = "games_pc_iso"
	CatGamesPCRip = "games_pc_rip"
	CatGamesPS3   = "games_ps3"
	CatGamesPS4   = "games_ps4"
	CatGamesXbox  = "games_xbox360"

	CatMusicFLAC = "music_flac"
	CatMusicMP3  = "music_mp3"

	CatEbooks        = "ebooks"
	CatSoftwarePCISO = "software_pc_iso"
	CatXXX           = "xxx"
)

// categoryGroups maps a human-facing label to the codes it expands to.
var categoryGroups = map[string][]string{
	"Movies": {
		CatMovies, CatMoviesBDFull, CatMoviesBDRemux, CatMoviesX264,
		CatMoviesX2643D, CatMoviesX2644K, CatMoviesX264720, CatMoviesX265,
		CatMoviesX2654K, CatMoviesX2654KHDR, CatMoviesXvid, CatMoviesXvid720,
	},
	"TV":       {CatTV, CatTVSD, CatTVUHD},
	"Games":    {CatGamesPCISO, CatGamesPCRip, CatGamesPS3, CatGamesPS4, CatGamesXbox},
	"Music":    {CatMusicFLAC, CatMusicMP3},
	"Books":    {CatEbooks},
	"Software": {CatSoftwarePCISO},
	"Adult":    {CatXXX},
}

// ResolveCategory expands a label to its category codes. Unknown labels
// return nil, which callers treat as "no category filter".
func ResolveCategory(label string) []string {
	return categoryGroups[label]
}

// CategoryLabels returns all known labels in sorted order.
func CategoryLabels() []string {
	labels := make([]string, 0, len(categoryGroups))
	for label := range categoryGroups {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// CategoryCodes returns every code in the vocabulary, sorted.
func CategoryCodes() []string {
	var codes []string
	for _, group := range categoryGroups {
		codes = append(codes, group...)
	}
	sort.Strings(codes)
	return codes
}
