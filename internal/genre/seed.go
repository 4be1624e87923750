package genre

// BridgeSeed maps a normalized book genre name to the movie genre name it
// bridges to. The seed tool resolves movie genre names to catalog IDs against
// the live movie genre list, so the IDs never need to be hardcoded here.
type BridgeSeed struct {
	BookGenre  string
	MovieGenre string
}

// DefaultBridgeSeeds is the built-in bridge mapping loaded by cmd/seed when
// no CSV file is supplied. Book genres without a sensible movie counterpart
// are deliberately absent; the recommender treats unmapped genres as a miss.
var DefaultBridgeSeeds = []BridgeSeed{
	{"action", "Action"},
	{"adventure", "Adventure"},
	{"biography", "Documentary"},
	{"children", "Family"},
	{"classics", "Drama"},
	{"comedy", "Comedy"},
	{"contemporary", "Drama"},
	{"crime", "Crime"},
	{"dystopia", "Science Fiction"},
	{"fairy tales", "Fantasy"},
	{"fantasy", "Fantasy"},
	{"fiction", "Drama"},
	{"folklore", "Fantasy"},
	{"graphic novel", "Animation"},
	{"historical", "History"},
	{"historical fiction", "History"},
	{"history", "History"},
	{"horror", "Horror"},
	{"humor", "Comedy"},
	{"literary fiction", "Drama"},
	{"magical realism", "Fantasy"},
	{"manga", "Animation"},
	{"memoir", "Documentary"},
	{"music", "Music"},
	{"mystery", "Mystery"},
	{"mythology", "Fantasy"},
	{"nature", "Documentary"},
	{"novel", "Drama"},
	{"occult", "Horror"},
	{"paranormal", "Horror"},
	{"picture book", "Family"},
	{"poetry", "Drama"},
	{"politics", "Documentary"},
	{"romance", "Romance"},
	{"science and technology", "Documentary"},
	{"science fiction", "Science Fiction"},
	{"short stories", "Drama"},
	{"space", "Science Fiction"},
	{"sports", "Documentary"},
	{"thriller", "Thriller"},
	{"travel", "Adventure"},
	{"true crime", "Crime"},
	{"war", "War"},
	{"young adult", "Family"},
}
