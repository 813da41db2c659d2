package shader

// Attribute locations match wavefront.AttributeLayout.
const (
	LocationPosition = 0
	LocationColor    = 1
	LocationUV       = 2
)

// MeshVertex transforms the interleaved position/color/uv buffer.
const MeshVertex = `
#version 410 core

layout (location = 0) in vec4 aPosition;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vColor;
out vec2 vUV;

void main() {
	gl_Position = uProjection * uView * uModel * vec4(aPosition.xyz, 1.0);
	vColor = aColor;
	vUV = aUV;
}
`

// MeshFragment shades each triangle with a slightly different gray and
// blends towards the texture by uTextureMix.
const MeshFragment = `
#version 410 core

in vec3 vColor;
in vec2 vUV;

uniform sampler2D uTexture;
uniform float uTextureMix;

out vec4 FragColor;

void main() {
	float shade = 0.55 + 0.45 * fract(float(gl_PrimitiveID) * 0.61803398875);
	vec4 base = vec4(vColor * shade, 1.0);
	FragColor = mix(base, texture(uTexture, vUV), uTextureMix);
}
`
