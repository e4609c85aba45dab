package derivative

import "github.com/fvidal/derivatives-ms-go/internal/model"

// RecipeTable maps a media role to its fixed recipe set. The table is built
// once at startup and injected; it must never be mutated afterwards.
type RecipeTable map[model.MediaRole][]model.VariantRecipe

// RecipesFor returns the recipe set for a role, or nil when the role has
// none.
func (t RecipeTable) RecipesFor(role model.MediaRole) []model.VariantRecipe {
	return t[role]
}

// RecipeSizes carries the configurable dimensions and quality used to build
// the default table.
type RecipeSizes struct {
	PropertyMediumWidth  int
	PropertyMediumHeight int
	ThumbSize            int
	AvatarSize           int
	CoverWidth           int
	CoverHeight          int
	Quality              int
}

// NewRecipeTable builds the role→recipes table for image uploads.
func NewRecipeTable(s RecipeSizes) RecipeTable {
	return RecipeTable{
		model.RoleProperty: {
			{Name: "medium", TargetWidth: s.PropertyMediumWidth, TargetHeight: s.PropertyMediumHeight, Fit: model.FitScaleDown, Quality: s.Quality},
			{Name: "thumb", TargetWidth: s.ThumbSize, TargetHeight: s.ThumbSize, Fit: model.FitCover, Quality: s.Quality},
		},
		model.RoleAvatar: {
			{Name: "avatar", TargetWidth: s.AvatarSize, TargetHeight: s.AvatarSize, Fit: model.FitCover, Quality: s.Quality},
		},
		model.RoleCover: {
			{Name: "cover", TargetWidth: s.CoverWidth, TargetHeight: s.CoverHeight, Fit: model.FitCover, Quality: s.Quality},
		},
		model.RoleAIGenerated: {
			{Name: "thumb", TargetWidth: s.ThumbSize, TargetHeight: s.ThumbSize, Fit: model.FitCover, Quality: s.Quality},
		},
	}
}

// VideoRecipes carries the recipe set applied to every video upload: a poster
// thumbnail plus a short preview clip. Video derivatives always land under
// derived keys, whatever the role.
type VideoRecipes struct {
	ThumbSize     int
	PreviewWidth  int
	PreviewHeight int
	Quality       int
}

// NewVideoRecipeSet builds the fixed video recipe list.
func NewVideoRecipeSet(s VideoRecipes) []model.VariantRecipe {
	return []model.VariantRecipe{
		{Name: "thumb", TargetWidth: s.ThumbSize, TargetHeight: s.ThumbSize, Fit: model.FitCover, Quality: s.Quality},
		{Name: "preview", TargetWidth: s.PreviewWidth, TargetHeight: s.PreviewHeight, Fit: model.FitScaleDown, Quality: s.Quality},
	}
}
