package cmd

import (
	"fetchbites/cache"
	"fetchbites/config"
	"fetchbites/fetcher"
	"fetchbites/recipes"
)

// imagePipeline is what every image consumer in the process shares.
type imagePipeline struct {
	store   *cache.Store
	fetcher fetcher.ImageFetcher
	decoder fetcher.Decoder
}

func newImagePipeline(c *config.Config) imagePipeline {
	f := fetcher.NewImageFetcher(c.FetchTimeout)
	if c.ShareImageFetches {
		f = fetcher.Shared(f)
	}
	return imagePipeline{
		store:   cache.NewStore(c.CacheCountLimit, c.CacheCostLimit()),
		fetcher: f,
		decoder: fetcher.NewImageDecoderWithLimit(c.CacheCostLimit()),
	}
}

func newRepository(c *config.Config, endpointFlag string) recipes.Repository {
	endpoint := recipes.ResolveEndpoint(c.Endpoint)
	if endpointFlag != "" {
		endpoint = fetcher.EndpointFromString(endpointFlag)
	}
	client := fetcher.NewRecipeClient(c.RecipesBaseURL, c.FetchTimeout)
	return recipes.NewRepository(client, endpoint)
}
