// Copyright (c) 2026 Animedex. All rights reserved.
// Author: paulo.hdf@gmail.com

package anime

// Mapping between write-request DTOs and the Anime entity. The functions are
// pure and total: absent optional fields carry their zero values through.

// ToAnime maps a creation request to a new entity. The ID is left unset so
// the store assigns it.
func (request CreateRequest) ToAnime() *Anime {
	return &Anime{
		Name:             request.Name,
		NumberOfEpisodes: request.NumberOfEpisodes,
		URI:              request.URI,
	}
}

// ToAnime maps a replace request to an entity. The request ID is carried
// through here and later overwritten by the service with the ID of the
// record being replaced, so a spoofed body ID can never relocate a record.
func (request ReplaceRequest) ToAnime() *Anime {
	return &Anime{
		ID:               request.ID,
		Name:             request.Name,
		NumberOfEpisodes: request.NumberOfEpisodes,
		URI:              request.URI,
	}
}
